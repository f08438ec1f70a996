package details

import (
	"github.com/gofiber/fiber/v2"

	contribController "clubfund_backend/internals/features/contributions/contributions/controller"
	contribRoute "clubfund_backend/internals/features/contributions/contributions/route"
	closeController "clubfund_backend/internals/features/contributions/monthly_closes/controller"
	closeRoute "clubfund_backend/internals/features/contributions/monthly_closes/route"
	paymentController "clubfund_backend/internals/features/contributions/payments/controller"
	paymentRoute "clubfund_backend/internals/features/contributions/payments/route"
	reportController "clubfund_backend/internals/features/contributions/reports/controller"
	reportRoute "clubfund_backend/internals/features/contributions/reports/route"
	statsController "clubfund_backend/internals/features/contributions/statistics/controller"
	statsRoute "clubfund_backend/internals/features/contributions/statistics/route"
)

func (s *Services) contributionController() *contribController.ContributionController {
	var storage contribController.ProofStorage
	if s.Storage != nil {
		storage = s.Storage
	}
	return contribController.NewContributionController(s.ContribSvc, s.Contributions, storage)
}

// FinancePublicRoutes webhook Midtrans (tanpa JWT, diverifikasi signature)
func FinancePublicRoutes(api fiber.Router, s *Services) {
	if s.Payments == nil {
		return
	}
	paymentRoute.PaymentPublicRoutes(api, paymentController.NewPaymentController(s.Payments))
}

func FinanceUserRoutes(user fiber.Router, s *Services) {
	contribRoute.ContributionUserRoutes(user, s.contributionController())
	if s.Payments != nil {
		paymentRoute.PaymentUserRoutes(user, paymentController.NewPaymentController(s.Payments))
	}
}

func FinanceAdminRoutes(admin fiber.Router, s *Services) {
	contribRoute.ContributionAdminRoutes(admin, s.contributionController())
	statsRoute.StatisticsAdminRoutes(admin, statsController.NewStatisticsController(s.Members, s.Contributions))
	reportRoute.ReportAdminRoutes(admin, reportController.NewReportController(s.Members, s.Contributions))
}

func FinanceSuperAdminRoutes(super fiber.Router, s *Services) {
	closeRoute.MonthlyCloseSuperAdminRoutes(super, closeController.NewMonthlyCloseController(s.CloseSvc))
}
