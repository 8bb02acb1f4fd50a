/*
Package session implements session management and persistence orchestration.

A Manager serializes every load-modify-save cycle of one session, in process
with a reference-counted mutex and across replicas with an optional
ports.DistributedLocker, on top of any ports.StateStore.
*/
package session
