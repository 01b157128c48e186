// Package cli is the interactive HEVA client.
//
// NewApp wires configuration, the session store, the REST client and the
// AuthService; App.Run restores the previous session and starts a REPL
// reading commands from stdin until "exit" or EOF. A background watcher
// pings the backend and shows online/offline in the prompt.
//
// Commands:
//
//	register   create an account (field-by-field validation, live email check)
//	login      sign in with email, role and password
//	forgot     request a password reset email
//	whoami     show the signed-in profile
//	update     edit profile fields as name=value lines
//	users      list known accounts (admins only)
//	logout     end the session
//	exit|quit  leave the program
package cli
