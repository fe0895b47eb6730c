package domain

// ApplyCatalogUpdate refreshes the draft's copy of an edited catalog record.
// A hall that is no longer available is deselected and room quantities are
// clamped to the new availability. Reports whether the draft changed.
func (d *Draft) ApplyCatalogUpdate(item Item) bool {
	changed := false
	switch v := item.(type) {
	case Hall:
		if d.hall != nil && d.hall.ItemID == v.ItemID {
			if v.Available {
				d.hall = &v
			} else {
				d.hall = nil
			}
			changed = true
		}
	case Decoration:
		if d.decoration != nil && d.decoration.ItemID == v.ItemID {
			d.decoration = &v
			changed = true
		}
	case Catering:
		if d.catering != nil && d.catering.ItemID == v.ItemID {
			d.catering = &v
			changed = true
		}
	case RoomType:
		if i := findRoom(d.rooms, v.ItemID); i >= 0 {
			rooms := cloneRooms(d.rooms)
			qty := min(rooms[i].Quantity, v.Available)
			if qty <= 0 {
				rooms = append(rooms[:i], rooms[i+1:]...)
			} else {
				rooms[i] = RoomSelection{Room: v, Quantity: qty}
			}
			d.rooms = rooms
			changed = true
		}
	}
	if changed {
		d.recompute()
	}
	return changed
}

// ApplyCatalogDelete drops any selection that refers to a deleted record.
func (d *Draft) ApplyCatalogDelete(kind Kind, id ItemID) bool {
	changed := false
	switch kind {
	case KindHall:
		if d.hall != nil && d.hall.ItemID == id {
			d.hall, changed = nil, true
		}
	case KindDecoration:
		if d.decoration != nil && d.decoration.ItemID == id {
			d.decoration, changed = nil, true
		}
	case KindCatering:
		if d.catering != nil && d.catering.ItemID == id {
			d.catering, changed = nil, true
		}
	case KindRoom:
		if i := findRoom(d.rooms, id); i >= 0 {
			rooms := cloneRooms(d.rooms)
			d.rooms, changed = append(rooms[:i], rooms[i+1:]...), true
		}
	}
	if changed {
		d.recompute()
	}
	return changed
}
