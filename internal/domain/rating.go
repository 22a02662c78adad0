package domain

// Vote is an attendee's opinion on one event. NoVote means no row is stored.
type Vote int

const (
	NoVote Vote = iota
	Liked
	Disliked
)

func (v Vote) String() string {
	switch v {
	case Liked:
		return "LIKE"
	case Disliked:
		return "DISLIKE"
	default:
		return "NONE"
	}
}

// Score is the vote's contribution to the event rating.
func (v Vote) Score() int64 {
	switch v {
	case Liked:
		return 1
	case Disliked:
		return -1
	default:
		return 0
	}
}

type VoteAction string

const (
	VoteActionLike          VoteAction = "LIKE"
	VoteActionDislike       VoteAction = "DISLIKE"
	VoteActionRemoveLike    VoteAction = "REMOVE_LIKE"
	VoteActionRemoveDislike VoteAction = "REMOVE_DISLIKE"
)

func (a VoteAction) Valid() bool {
	switch a {
	case VoteActionLike, VoteActionDislike, VoteActionRemoveLike, VoteActionRemoveDislike:
		return true
	}
	return false
}

// Apply returns the vote after action. Applying the same action twice
// yields the same vote as applying it once.
func (v Vote) Apply(action VoteAction) Vote {
	switch action {
	case VoteActionLike:
		return Liked
	case VoteActionDislike:
		return Disliked
	case VoteActionRemoveLike:
		if v == Liked {
			return NoVote
		}
	case VoteActionRemoveDislike:
		if v == Disliked {
			return NoVote
		}
	}
	return v
}

// VoteResult is returned by rating mutations.
type VoteResult struct {
	EventID int64 `json:"event_id"`
	VoterID int64 `json:"voter_id"`
	Vote    Vote  `json:"-"`
	Rating  int64 `json:"rating"`
}
