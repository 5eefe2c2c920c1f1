package common

import "time"

// ChallengeLength is the number of characters in a login challenge.
const ChallengeLength = 32

// DefaultAccountTTL is the age after which the sweeper evicts an account.
const DefaultAccountTTL = 12 * time.Minute

// DefaultBusyTimeout bounds how long a statement waits on a locked store.
const DefaultBusyTimeout = 10 * time.Second
