package main

type seatStatus int

const (
	statusActive seatStatus = iota
	statusEliminated
	statusWon
)

func (s seatStatus) String() string {
	switch s {
	case statusEliminated:
		return "eliminated"
	case statusWon:
		return "won"
	}
	return "active"
}

// player is the per-seat record. Seats are numbered 1..N and stable for
// the match lifetime; eliminated players remain as historical records and
// are skipped, never deleted.
type player struct {
	seat          int
	status        seatStatus
	guessAttempts int
}

func newPlayers(count int) []*player {
	players := make([]*player, count)
	for i := range players {
		players[i] = &player{seat: i + 1}
	}
	return players
}

func activePlayers(players []*player) []*player {
	active := make([]*player, 0, len(players))
	for _, p := range players {
		if p.status == statusActive {
			active = append(active, p)
		}
	}
	return active
}

func playerBySeat(players []*player, seat int) *player {
	for _, p := range players {
		if p.seat == seat {
			return p
		}
	}
	return nil
}

func statusCounts(players []*player) (active, eliminated, won int) {
	for _, p := range players {
		switch p.status {
		case statusActive:
			active++
		case statusEliminated:
			eliminated++
		case statusWon:
			won++
		}
	}
	return active, eliminated, won
}
