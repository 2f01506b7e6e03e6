/*
Package wallet backs every feature paid from the wallet balance: send money,
make payment, bill pay, gift cards and virtual cards.

It keeps the wallet snapshot of each browser session, prices an amount with
the feature's charge schedule and checks it against the remaining limit.

Usage:

	svc := wallet.NewService(userClient, sid, deps)

	// Quote a transfer of 25 in the selected display currency
	q, err := svc.Quote(ctx, wallet.FeatureTransfer, "25", "")

	// Debounced remaining limit while the user types
	left, err := svc.Remaining(ctx, q)

Amounts are strings as typed; every calculation goes through the preview
package and never yields NaN or a panic on bad input.
*/
package wallet
