// Package store holds the issuance ledger backends. Every backend makes
// check-and-reserve atomic per registration: memory with sharded locks,
// Redis with SET NX, Postgres with INSERT ... ON CONFLICT.
package store

import "errors"

var (
	// ErrIssued means a credential was already produced for the registration.
	ErrIssued = errors.New("registration already issued")
	// ErrReserved means another issuance holds an unexpired reservation.
	ErrReserved = errors.New("registration reserved by another issuance")
)
