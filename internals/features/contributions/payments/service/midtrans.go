package service

import (
	"crypto/sha512"
	"encoding/hex"
	"strings"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// Gateway pembuat token Snap
type Gateway interface {
	CreateSnap(orderID string, gross int64, name, email string) (token string, redirectURL string, err error)
}

type MidtransGateway struct {
	client snap.Client
}

// NewMidtransGateway production=false → sandbox
func NewMidtransGateway(serverKey string, production bool) *MidtransGateway {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	g := &MidtransGateway{}
	g.client.New(serverKey, env)
	return g
}

func (g *MidtransGateway) CreateSnap(orderID string, gross int64, name, email string) (string, string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: gross,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: name,
			Email: email,
		},
	}
	resp, err := g.client.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.RedirectURL, nil
}

func sha512sum(s string) string {
	h := sha512.Sum512([]byte(s))
	return hex.EncodeToString(h[:])
}

// VerifySignature SHA512(order_id + status_code + gross_amount + server_key)
func VerifySignature(n Notification, serverKey string) bool {
	want := strings.ToLower(strings.TrimSpace(n.SignatureKey))
	if want == "" || serverKey == "" {
		return false
	}
	return sha512sum(n.OrderID+n.StatusCode+n.GrossAmount+serverKey) == want
}
