package vaultctl

import "errors"

var (
	ErrNoKey          = errors.New("no vault key: pass --key, set APP_SECRET_KEY or run in a terminal")
	ErrWrongArguments = errors.New("wrong number of arguments")
)
