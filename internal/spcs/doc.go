// Package spcs drives the Snowpark Container Services control plane.
//
// SPCS has no REST surface of its own; every operation is a SQL
// statement executed against the account (CREATE COMPUTE POOL,
// CREATE SERVICE ... FROM SPECIFICATION, SYSTEM$GET_SERVICE_STATUS, ...).
// Client builds those statements from validated object names and parses
// the result rows into typed values.
package spcs
