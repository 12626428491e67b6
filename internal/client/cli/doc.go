// Package cli provides the interactive BookTracker terminal client.
//
// It wires configuration, the local session store and the REST API client
// into a read-eval-print loop. A session saved by an earlier run is restored
// at start-up; when the server rejects the saved token the session is
// dropped and the user is asked to log in again.
//
// Commands: register, login, logout, whoami, list, add, edit, delete, help,
// exit.
package cli
