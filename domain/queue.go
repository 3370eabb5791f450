package domain

import "time"

type AssignmentStrategy string

const WorkloadBalanced AssignmentStrategy = "WORKLOAD_BALANCED"

// AutoAssignment describes how a chat should be matched when the queue is bypassed.
type AutoAssignment struct {
	Strategy    AssignmentStrategy
	MaxWaitTime time.Duration
}

// QueueEntry is one line of the derived queue snapshot. Never stored.
type QueueEntry struct {
	Chat     Chat
	Position int
}

// ChatCreation is what a chat creation request resolves to.
// Position is 0 when the chat never entered the queue.
type ChatCreation struct {
	Chat           Chat
	Position       int
	AutoAssignment *AutoAssignment
	FirstMessageID *string
}
