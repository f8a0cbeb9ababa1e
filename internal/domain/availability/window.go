package availability

import "fmt"

// Window is either closed or a single half-open interval [at, until)
// in minutes of day. The zero value is closed.
type Window struct {
	open  bool
	at    Minutes
	until Minutes
}

func Closed() Window {
	return Window{}
}

// Open builds an open window. It fails unless 0 <= at < until <= 24:00.
func Open(at, until Minutes) (Window, error) {
	if at < 0 || until > MinutesPerDay || at >= until {
		return Window{}, fmt.Errorf("%w: %s-%s", ErrInvalidInterval, at, until)
	}
	return Window{open: true, at: at, until: until}, nil
}

// window is Open for stored data: a malformed row resolves to closed.
func window(at, until Minutes) Window {
	w, err := Open(at, until)
	if err != nil {
		return Closed()
	}
	return w
}

func (w Window) IsOpen() bool     { return w.open }
func (w Window) OpenAt() Minutes  { return w.at }
func (w Window) CloseAt() Minutes { return w.until }

func (w Window) Length() Minutes {
	if !w.open {
		return 0
	}
	return w.until - w.at
}

func (w Window) String() string {
	if !w.open {
		return "closed"
	}
	return w.at.String() + "-" + w.until.String()
}

// Intersect combines the branch and staff windows of the same day.
// Every query path goes through here so they agree for equal inputs.
func Intersect(a, b Window) Window {
	if !a.open || !b.open {
		return Closed()
	}
	return window(max(a.at, b.at), min(a.until, b.until))
}
