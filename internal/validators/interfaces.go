// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request payloads before the service layer seals
// and stores them.
//
// A [Validator] accepts any supported model and an optional list of field
// names. With no names a default set of rules for that model runs; with
// names only those rules run, in the given order, and the first failure is
// returned. Errors are sentinels from errors.go so handlers can map them to
// HTTP statuses with [errors.Is].
package validators

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/validator_mock.go -package=mock

// Validator validates an arbitrary value, optionally restricted to the
// named fields.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
