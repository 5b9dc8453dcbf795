// Package cli provides the pinkeeper command-line client.
//
// It wires configuration, the local credential store and the remote backup
// client into an AuthService and exposes it as cobra commands:
//
//	pinkeeper register [--email E] [--phone P]   issue a digest and back it up
//	pinkeeper login [digest]                    verify a digest locally
//	pinkeeper status                            show the active credential
//	pinkeeper logout                            forget the active credential
//	pinkeeper ping                              probe the backup service
//	pinkeeper version                           print build information
//
// Missing register inputs are prompted for; the login digest is read without
// echo when not given as an argument.
package cli
