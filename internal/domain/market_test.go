package domain

import "testing"

func TestCommission(t *testing.T) {
	cases := []struct {
		price    int64
		fee      int64
		proceeds int64
	}{
		{100, 5, 95},
		{99, 4, 95},   // floor
		{19, 0, 19},   // below 20 the 5% floors to zero
		{1000, 50, 950},
		{12345, 617, 11728},
	}
	for _, tc := range cases {
		if got := Commission(tc.price); got != tc.fee {
			t.Errorf("Commission(%d) = %d; want %d", tc.price, got, tc.fee)
		}
		if got := SellerProceeds(tc.price); got != tc.proceeds {
			t.Errorf("SellerProceeds(%d) = %d; want %d", tc.price, got, tc.proceeds)
		}
		// The marketplace never fabricates or destroys crystals.
		if Commission(tc.price)+SellerProceeds(tc.price) != tc.price {
			t.Errorf("price %d: fee + proceeds != price", tc.price)
		}
	}
}
