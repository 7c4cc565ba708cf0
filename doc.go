// Package mig applies and reverts SQL schema migrations.
//
// A Migrator reads every migration from a source.Source, asks a driver.Driver for the
// highest applied migration id and then applies whatever is newer, or reverts everything
// up to it, strictly one migration at a time. All state lives in the driver's bookkeeping
// table; the Migrator itself keeps nothing between calls.
package mig
