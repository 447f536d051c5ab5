package extract

import "testing"

func TestLooksLikeTransaction(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"paid with rupee sign", "Paid ₹499 to Swiggy", true},
		{"debited with rs", "Rs.2500.00 debited from A/c XX1234", true},
		{"credited with inr", "INR 12,000 credited to your account", true},
		{"otp rejected", "Your OTP for login is 482910, valid for 10 minutes", false},
		{"otp with amount still rejected", "OTP 4829 to pay Rs. 500. Do not share.", false},
		{"laptop is not otp", "Paid Rs. 45,000 to Croma for laptop", true},
		{"offer rejected", "Special offer: get Rs. 100 cashback when you pay today", false},
		{"collect request rejected", "Ramesh has requested money from you: Rs. 500", false},
		{"promo expiry rejected", "Your reward of Rs. 50 expires on 31 Jan", false},
		{"currency but no verb", "Your balance is Rs. 1,200.50", false},
		{"verb but no currency", "You paid your electricity bill", false},
		{"neither", "Your parcel is out for delivery", false},
		{"empty", "", false},
	}

	reg := NewRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The gate must hold for every variant, generic included.
			for _, v := range reg.variants {
				if got := v.LooksLikeTransaction(tt.body); got != tt.want {
					t.Errorf("%s.LooksLikeTransaction(%q) = %v, want %v",
						v.name, tt.body, got, tt.want)
				}
			}
		})
	}
}
