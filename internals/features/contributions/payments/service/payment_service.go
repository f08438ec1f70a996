package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"clubfund_backend/internals/constants"
	contribModel "clubfund_backend/internals/features/contributions/contributions/model"
	contribService "clubfund_backend/internals/features/contributions/contributions/service"
	memberModel "clubfund_backend/internals/features/users/members/model"
	"clubfund_backend/internals/helpers/weeks"

	"github.com/google/uuid"
)

const FailedPaymentReason = "Thanh toán online không thành công"

// Notification payload webhook Midtrans (field lain diabaikan)
type Notification struct {
	TransactionTime   string `json:"transaction_time"`
	TransactionStatus string `json:"transaction_status"` // capture, settlement, pending, deny, cancel, expire, failure
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
	OrderID           string `json:"order_id"`
	GrossAmount       string `json:"gross_amount"`
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"`
	TransactionID     string `json:"transaction_id"`
}

type ContributionFlow interface {
	PrepareSubmission(ctx context.Context, in contribService.SubmitInput) ([]contribModel.ContributionModel, error)
	Approve(ctx context.Context, id uuid.UUID, reviewerID *uuid.UUID) (*contribModel.ContributionModel, error)
	Reject(ctx context.Context, id uuid.UUID, reviewerID *uuid.UUID, reason string) (*contribModel.ContributionModel, error)
}

type OrderStore interface {
	CreateBatch(ctx context.Context, rows []contribModel.ContributionModel) error
	ListByOrderID(ctx context.Context, orderID string) ([]contribModel.ContributionModel, error)
	DeletePendingByOrder(ctx context.Context, orderID string) error
}

type MemberFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*memberModel.MemberModel, error)
}

type PaymentService struct {
	Contributions ContributionFlow
	Store         OrderStore
	Members       MemberFinder
	Gateway       Gateway
	ServerKey     string
	NewOrderID    func() string
}

func NewPaymentService(flow ContributionFlow, store OrderStore, members MemberFinder, gw Gateway, serverKey string) *PaymentService {
	return &PaymentService{
		Contributions: flow,
		Store:         store,
		Members:       members,
		Gateway:       gw,
		ServerKey:     serverKey,
		NewOrderID:    newOrderID,
	}
}

func newOrderID() string {
	return "CF-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:20])
}

type OnlinePayment struct {
	OrderID       string                           `json:"order_id"`
	SnapToken     string                           `json:"snap_token"`
	RedirectURL   string                           `json:"redirect_url"`
	GrossAmount   int64                            `json:"gross_amount"`
	Contributions []contribModel.ContributionModel `json:"-"`
}

// CreateOnlinePayment pecah minggu seperti upload bukti, simpan PENDING + order id, lalu minta token Snap.
func (s *PaymentService) CreateOnlinePayment(ctx context.Context, memberID uuid.UUID, start weeks.Ref, weeksRequested int) (*OnlinePayment, error) {
	orderID := s.NewOrderID()
	rows, err := s.Contributions.PrepareSubmission(ctx, contribService.SubmitInput{
		MemberID:       memberID,
		Start:          start,
		WeeksRequested: weeksRequested,
		PaymentOrderID: &orderID,
	})
	if err != nil {
		return nil, err
	}
	m, err := s.Members.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	var gross int64
	for _, r := range rows {
		gross += r.Amount
	}
	if err := s.Store.CreateBatch(ctx, rows); err != nil {
		return nil, err
	}

	token, redirect, err := s.Gateway.CreateSnap(orderID, gross, m.Name, m.Email)
	if err != nil {
		if delErr := s.Store.DeletePendingByOrder(ctx, orderID); delErr != nil {
			log.Printf("[ERROR] rollback order %s: %v", orderID, delErr)
		}
		return nil, fmt.Errorf("midtrans snap %s: %w", orderID, err)
	}

	log.Printf("[INFO] order %s dibuat: member=%s minggu=%d gross=%d", orderID, memberID, len(rows), gross)
	return &OnlinePayment{
		OrderID:       orderID,
		SnapToken:     token,
		RedirectURL:   redirect,
		GrossAmount:   gross,
		Contributions: rows,
	}, nil
}

// Aksi hasil mapping status Midtrans
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionIgnore  = "ignore"
)

func actionFor(n Notification) string {
	switch strings.ToLower(n.TransactionStatus) {
	case "settlement":
		return ActionApprove
	case "capture":
		// kartu kredit: challenge ditunggu, deny ditolak
		switch strings.ToLower(n.FraudStatus) {
		case "", "accept":
			return ActionApprove
		case "challenge":
			return ActionIgnore
		}
		return ActionReject
	case "deny", "cancel", "expire", "failure":
		return ActionReject
	}
	return ActionIgnore
}

type NotificationResult struct {
	OrderID string `json:"order_id"`
	Action  string `json:"action"`
	Updated int    `json:"updated"`
}

// HandleNotification verifikasi signature lalu approve/reject semua record PENDING milik order.
func (s *PaymentService) HandleNotification(ctx context.Context, n Notification) (*NotificationResult, error) {
	if !VerifySignature(n, s.ServerKey) {
		return nil, fmt.Errorf("signature order %s: %w", n.OrderID, constants.ErrUnauthorized)
	}

	res := &NotificationResult{OrderID: n.OrderID, Action: actionFor(n)}
	if res.Action == ActionIgnore {
		return res, nil
	}

	rows, err := s.Store.ListByOrderID(ctx, n.OrderID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		log.Printf("[WARN] notifikasi midtrans untuk order tak dikenal: %s", n.OrderID)
		res.Action = ActionIgnore
		return res, nil
	}

	reason := fmt.Sprintf("%s (%s)", FailedPaymentReason, strings.ToLower(n.TransactionStatus))
	for _, r := range rows {
		if r.Status != contribModel.StatusPending {
			continue
		}
		var err error
		if res.Action == ActionApprove {
			_, err = s.Contributions.Approve(ctx, r.ID, nil)
		} else {
			_, err = s.Contributions.Reject(ctx, r.ID, nil, reason)
		}
		if err != nil {
			// webhook bisa datang berulang
			if errors.Is(err, constants.ErrNotPending) || errors.Is(err, constants.ErrLocked) {
				continue
			}
			return nil, err
		}
		res.Updated++
	}
	return res, nil
}
