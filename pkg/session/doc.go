/*
Package session implements resumable word computations and their persistence orchestration.

A computation is an active-state set that clients feed one symbol at a time, possibly
from different processes. The Manager serializes access per computation ID with
reference-counted local locks and an optional distributed locker, and persists every
change through a ports.ComputationStore.
*/
package session
