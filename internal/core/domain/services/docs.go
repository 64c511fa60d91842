// Package services holds the authorization rules of the back office.
//
// Every decision switches on the closed identity.Role resolved at authentication time:
//
//   - visibility scopes (Scope) for package and ticket listings
//   - intake checks that keep destination, driver and vehicle inside the agent's company
//   - the delivery rule: only an agent at the destination branch confirms receipt
//   - the ticket status policy, configurable between any authenticated principal and
//     principals whose ticket scope contains the ticket
package services
