package entity

// Player is an anonymous multiplayer participant. Mark and GameID are set while a game is assigned.
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Mark   Cell   `json:"mark,omitempty"`
	GameID string `json:"game_id,omitempty"`
}

func NewPlayer(id, name string) *Player {
	return &Player{
		ID:   id,
		Name: name,
	}
}

func (that *Player) JoinGame(gameID string, mark Cell) {
	that.GameID = gameID
	that.Mark = mark
}

func (that *Player) LeaveGame() {
	that.GameID = ""
	that.Mark = EmptyCell
}

func (that *Player) InGame() bool {
	return that.GameID != ""
}
