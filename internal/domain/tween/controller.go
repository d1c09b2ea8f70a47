package tween

// Controller ticks every active interpolator once per simulation step
type Controller struct {
	active []*Interpolator
	// added during the current tick; they begin on the next one
	incoming []*Interpolator
	nextID   ID
	ticking  bool
}

// NewController creates an empty controller
func NewController() *Controller {
	return &Controller{}
}

// Add registers an interpolator. It begins on the next Tick.
func (c *Controller) Add(ip *Interpolator) ID {
	c.nextID++
	ip.id = c.nextID
	ip.status = Active
	ip.elapsed = 0
	c.incoming = append(c.incoming, ip)
	return ip.id
}

// Len returns the number of registered interpolators
func (c *Controller) Len() int {
	return len(c.active) + len(c.incoming)
}

// Tick advances every interpolator by dt. Completed interpolators are
// removed before their callbacks run, so a callback may Add or Cancel freely.
func (c *Controller) Tick(dt float64) {
	if len(c.incoming) > 0 {
		c.active = append(c.active, c.incoming...)
		c.incoming = nil
	}

	c.ticking = true
	var finished []*Interpolator
	kept := c.active[:0]
	for _, ip := range c.active {
		if ip.status != Active {
			continue
		}
		if ip.step(dt) {
			ip.status = Complete
			finished = append(finished, ip)
			continue
		}
		kept = append(kept, ip)
	}
	for i := len(kept); i < len(c.active); i++ {
		c.active[i] = nil
	}
	c.active = kept
	c.ticking = false

	for _, ip := range finished {
		if ip.onComplete != nil {
			ip.onComplete()
		}
	}
}

// Cancel removes an interpolator without firing its callback.
// It reports whether the id was still registered.
func (c *Controller) Cancel(id ID) bool {
	for _, list := range []*[]*Interpolator{&c.active, &c.incoming} {
		for i, ip := range *list {
			if ip.id != id || ip.status != Active {
				continue
			}
			ip.status = Cancelled
			if !c.ticking {
				*list = append((*list)[:i], (*list)[i+1:]...)
			}
			return true
		}
	}
	return false
}

// Clear cancels everything
func (c *Controller) Clear() {
	for _, ip := range c.active {
		ip.status = Cancelled
	}
	for _, ip := range c.incoming {
		ip.status = Cancelled
	}
	c.active = nil
	c.incoming = nil
}
