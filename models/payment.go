package models

// PaymentBreakdown is returned when a payment authorization is created.
// Amounts are integers in the currency's major unit (the gateway is charged
// in minor units).
type PaymentBreakdown struct {
	AuthorizationID string `json:"authorizationId"`
	ClientSecret    string `json:"clientSecret"`
	TotalCost       int64  `json:"totalCost"`
	Commission      int64  `json:"commission"`
	Payout          int64  `json:"payout"`
}

// VerifiedAuthorization is the cross-checked view of an external payment
// authorization. Amounts come from the authorization metadata, never from
// current hotel state, so a mid-flow rate change cannot skew what was charged.
type VerifiedAuthorization struct {
	AuthorizationID string
	TotalCost       int64
	Commission      int64
	Payout          int64
	Nights          int
}
