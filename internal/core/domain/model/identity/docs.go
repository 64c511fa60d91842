// Package identity models who is asking: the closed Role enumeration and the
// authenticated Principal with its company, branch and agent affiliation.
package identity
