package http

// JoinRequest represents the payload for /join. Empty CreateNew and
// GameCode means quick play.
type JoinRequest struct {
	PlayerID   string `form:"player_id" json:"player_id"`
	PlayerName string `form:"player_name" json:"player_name"`
	CreateNew  bool   `form:"create_new" json:"create_new"`
	GameCode   string `form:"game_code" json:"game_code"`
}

// MoveRequest represents a move in /game/{code}/make-move. Row and Col
// are optional together; when both are absent the server picks an
// uncalled number at random.
type MoveRequest struct {
	PlayerID string `form:"player_id" json:"player_id"`
	Row      *int   `form:"row" json:"row"`
	Col      *int   `form:"col" json:"col"`
}
