// README: Admin-side order status transition table.
package order

// Next returns the status an admin advance moves an order into, and whether
// such an advance exists. The cooking branch depends on the pickup flag:
// self-collect orders go straight to done, delivery orders wait for a
// courier. search_courier, delivering and delivered are advanced by external
// collaborators (courier assignment, delivery confirmation), never from here.
func Next(current Status, pickup bool) (Status, bool) {
	switch current {
	case StatusWait:
		return StatusCooking, true
	case StatusCooking:
		if pickup {
			return StatusDone, true
		}
		return StatusSearchCourier, true
	case StatusCourier:
		return StatusDelivering, true
	case StatusDone:
		return StatusDelivered, true
	}
	return current, false
}

// Advanceable reports whether the admin UI should offer an advance action
// for an order in status s.
func Advanceable(s Status) bool {
	_, ok := Next(s, false)
	return ok
}
