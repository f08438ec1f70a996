package details

import (
	"log"
	"time"

	"gorm.io/gorm"

	"clubfund_backend/internals/configs"
	contribRepo "clubfund_backend/internals/features/contributions/contributions/repository"
	contribService "clubfund_backend/internals/features/contributions/contributions/service"
	closeRepo "clubfund_backend/internals/features/contributions/monthly_closes/repository"
	closeService "clubfund_backend/internals/features/contributions/monthly_closes/service"
	paymentService "clubfund_backend/internals/features/contributions/payments/service"
	notifRepo "clubfund_backend/internals/features/notifications/repository"
	notifService "clubfund_backend/internals/features/notifications/service"
	settingsRepo "clubfund_backend/internals/features/settings/repository"
	authRepo "clubfund_backend/internals/features/users/auth/repository"
	authService "clubfund_backend/internals/features/users/auth/service"
	memberRepo "clubfund_backend/internals/features/users/members/repository"
	memberService "clubfund_backend/internals/features/users/members/service"
	helperOSS "clubfund_backend/internals/helpers/oss"
)

// Services satu instance repo/service per proses, dipakai route & cron.
type Services struct {
	DB      *gorm.DB
	Storage *helperOSS.OSSService // nil kalau ALI_OSS_* belum diset

	Members       *memberRepo.MemberRepository
	Settings      *settingsRepo.SettingsRepository
	Contributions *contribRepo.ContributionRepository
	Closes        *closeRepo.MonthlyCloseRepository
	NotifLogs     *notifRepo.NotificationRepository
	Tokens        *authRepo.TokenRepository

	Auth          *authService.AuthService
	MemberSvc     *memberService.MemberService
	ContribSvc    *contribService.ContributionService
	CloseSvc      *closeService.MonthlyCloseService
	Notifications *notifService.NotificationService
	Payments      *paymentService.PaymentService // nil kalau MIDTRANS_SERVER_KEY kosong
}

func NewServices(db *gorm.DB, storage *helperOSS.OSSService, mailer notifService.Mailer) *Services {
	s := &Services{DB: db, Storage: storage}

	s.Members = memberRepo.NewMemberRepository(db)
	s.Settings = settingsRepo.NewSettingsRepository(db)
	s.Contributions = contribRepo.NewContributionRepository(db)
	s.Closes = closeRepo.NewMonthlyCloseRepository(db)
	s.NotifLogs = notifRepo.NewNotificationRepository(db)
	s.Tokens = authRepo.NewTokenRepository(db, configs.JWTSecret)

	delay := time.Duration(configs.GetEnvInt("REMINDER_DELAY_MS", int(notifService.DefaultReminderDelay/time.Millisecond))) * time.Millisecond
	s.Notifications = notifService.NewNotificationService(mailer, s.Settings, s.NotifLogs, s.NotifLogs, delay)

	var google authService.GoogleVerifier
	if configs.GoogleClientID != "" {
		google = authService.FuturendaVerifier{ClientID: configs.GoogleClientID}
	}
	ttl := time.Duration(configs.GetEnvInt("JWT_ACCESS_TTL_HOURS", 0)) * time.Hour
	s.Auth = authService.NewAuthService(s.Members, google, s.Tokens, configs.JWTSecret, ttl)

	s.MemberSvc = memberService.NewMemberService(s.Members, s.Notifications)
	s.ContribSvc = contribService.NewContributionService(s.Contributions, s.Members, s.Settings, s.Notifications)
	s.ContribSvc.Closes = s.Closes
	if storage != nil {
		s.ContribSvc.Proofs = storage
	}
	s.CloseSvc = closeService.NewMonthlyCloseService(s.Closes, s.Members)

	if configs.MidtransServerKey != "" {
		gw := paymentService.NewMidtransGateway(configs.MidtransServerKey, configs.GetEnvBool("MIDTRANS_USE_PROD", false))
		s.Payments = paymentService.NewPaymentService(s.ContribSvc, s.Contributions, s.Members, gw, configs.MidtransServerKey)
	} else {
		log.Println("[WARN] MIDTRANS_SERVER_KEY kosong, pembayaran online nonaktif")
	}
	return s
}
