// Package kernel provides the value objects shared by every domain package:
//   - UUID: entity identifiers whose zero value is rejected
//   - Money: non-negative two-decimal amounts backed by shopspring/decimal
//   - NewShortCode: the random upper-case hex codes used for tracking numbers and ticket codes
package kernel
