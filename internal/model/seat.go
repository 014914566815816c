package model

// Seat is a physical seat in a hall, identified by its (row, number)
// pair which is unique within the hall.  Seats exist for the lifetime
// of their hall and are only removed via the hall cascade.
//
// Fields:
//  ID     – primary key identifier.
//  HallID – hall this seat belongs to.
//  Row    – row index, 1-based.
//  Number – position within the row, 1-based.
type Seat struct {
	ID     uint64 // seats.id
	HallID uint64 // seats.hall_id
	Row    uint32 // seats.row_num
	Number uint32 // seats.number
}
