// Package organization holds the tenant reference data that shipments point at:
// companies, their branches, the agents working there, drivers, vehicles and package
// categories.
//
// These entities are read-only from the point of view of the shipment workflows. They are
// loaded by id, checked for company affiliation, and referenced by the Package and Ticket
// of a shipment. Company affiliation of agents and drivers is always derived from their
// branch.
package organization
