// Package vaultctl implements the vaultctl command-line tool.
//
// vaultctl seals and opens single values with the same VaultCipher the
// server uses, so operators can inspect stored envelopes, re-key test data
// or generate APP_SECRET_KEY material without a running server.
//
//	vaultctl --key "$APP_SECRET_KEY" seal "hunter2"
//	vaultctl open --copy 6f1c...:9a2b...:0c7d...
//	vaultctl inspect 6f1c...:9a2b...:0c7d...
//	vaultctl keygen --bytes 32
package vaultctl
