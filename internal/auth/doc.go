// Package auth provides local account management for TripFlow.
//
// It implements:
//   - Salted SHA-256 credential hashing in the app's on-disk format
//     (hex salt and hash columns, hash = SHA256(salt || password))
//   - Constant-time credential verification
//   - The singleton session row tracking the currently signed-in user
//
// There is no server and no token surface: accounts exist only in the
// local database, and "signed in" means the session row points at a user.
// Password hash and salt never leave this package; public results expose
// only the account id and email.
//
// Login failures are deliberately indistinguishable: an unknown email and
// a wrong password both return ErrInvalidCredentials, so stored emails
// cannot be enumerated through the login flow.
package auth
