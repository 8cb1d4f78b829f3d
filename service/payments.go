package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/launchhub/portal_end/models"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

var snapClient snap.Client

// InitPayments configures the Midtrans Snap client. Called once at
// bootstrap.
func InitPayments(serverKey string, production bool) {
	if production {
		snapClient.New(serverKey, midtrans.Production)
	} else {
		snapClient.New(serverKey, midtrans.Sandbox)
	}
}

// NewOrderID builds the provider order id tied to a membership purchase.
func NewOrderID(userID string, planCode string) string {
	return fmt.Sprintf("mem-%s-%s-%d", planCode, userID, time.Now().Unix())
}

// CreateSubscriptionTransaction opens a Snap transaction for the plan and
// returns the token and redirect URL the SPA hands to the payment widget.
func CreateSubscriptionTransaction(orderID string, plan models.MembershipPlan, user models.User) (string, string, error) {
	if plan.Price <= 0 {
		return "", "", errors.New("plan has no price")
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: plan.Price,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: user.Username,
			Email: user.Email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       plan.Code,
				Price:    plan.Price,
				Qty:      1,
				Name:     plan.Name,
				Category: "membership",
			},
		},
	}

	resp, err := snapClient.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.RedirectURL, nil
}
