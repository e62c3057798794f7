package engine

import "errors"

var (
	ErrBadConfig      = errors.New("bad_config")
	ErrUnknownSeat    = errors.New("unknown_seat")
	ErrNoPendingActor = errors.New("no_pending_actor")
	ErrIllegalAction  = errors.New("illegal_action")
	ErrBadAmount      = errors.New("bad_amount")
	ErrCardInUse      = errors.New("card_in_use")
	ErrBoardSize      = errors.New("bad_board_size")
	ErrNothingToUndo  = errors.New("nothing_to_undo")
)
