package osmreader

import "fmt"

// ErrRingNotClosed indicates a relation's outer or inner ring could not be
// closed after best-effort way concatenation.
type ErrRingNotClosed struct {
	RelationID int64
	Role       string
	Segments   int
}

func (e *ErrRingNotClosed) Error() string {
	return fmt.Sprintf("relation %d: %s ring did not close after joining %d segments",
		e.RelationID, e.Role, e.Segments)
}

// ErrMissingNodeCoordinate indicates a way referenced a node id never seen
// during the coordinate-resolution pass.
type ErrMissingNodeCoordinate struct {
	WayID, NodeID int64
}

func (e *ErrMissingNodeCoordinate) Error() string {
	return fmt.Sprintf("way %d: missing coordinate for node %d", e.WayID, e.NodeID)
}
