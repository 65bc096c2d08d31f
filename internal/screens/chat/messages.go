package chat

import (
	"time"

	"github.com/talentscout/screener/internal/record"
	"github.com/talentscout/screener/internal/screening"
)

// replyMsg carries the outcome of a Start, Resume or HandleTurn call.
type replyMsg struct {
	Reply *screening.Reply
	Err   error
}

// recordMsg carries the assembled record once the interview has ended.
type recordMsg struct {
	Record record.Record
	Err    error
}

// spinnerTickMsg animates the typing indicator.
type spinnerTickMsg time.Time
