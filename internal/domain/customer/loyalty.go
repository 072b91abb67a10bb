package customer

// LoyaltyAccount accumulates points earned from paid orders. One point is
// credited per whole currency unit of the order total.
type LoyaltyAccount struct {
	points int
}

func NewLoyaltyAccount() *LoyaltyAccount {
	return &LoyaltyAccount{}
}

func (a *LoyaltyAccount) Points() int { return a.points }

func (a *LoyaltyAccount) AddPoints(p int) {
	if p <= 0 {
		return
	}
	a.points += p
}

// RedeemPoints deducts p points when the balance covers them and reports
// whether the redemption happened.
func (a *LoyaltyAccount) RedeemPoints(p int) bool {
	if p <= 0 || a.points < p {
		return false
	}
	a.points -= p
	return true
}

func (a *LoyaltyAccount) clone() *LoyaltyAccount {
	if a == nil {
		return nil
	}
	copied := *a
	return &copied
}
