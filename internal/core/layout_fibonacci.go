package core

const (
	fibMaxScale = 1.75
	fibMinScale = 0.5
	fibMinCfact = 0.5
)

// fibonacci halves the remaining area for every client, alternating
// between vertical and horizontal cuts. dwindle keeps cutting towards the
// bottom right; otherwise the cuts spiral inwards. A client's cfact
// relative to its successor scales the horizontal cuts. Once a cut would
// go below the minimum size, the remaining clients float in the centre.
func fibonacci(p Params, panes []Pane, dwindle bool) Result {
	res := newResult(panes)
	cf := res.Cfacts
	n := len(panes)
	a := p.Area
	nx, ny, nw, nh := a.X, a.Y, a.W, a.H
	hrest, wrest := 0, 0
	split := true
	n1, n2 := -1, -1

	for i, pn := range panes {
		if !split {
			res.Floated[i] = true
			res.Rects[i] = Rect{
				a.X + (a.W-nw)/2, a.Y + (a.H-nh)/2,
				nw - 2*pn.BW, nh - 2*pn.BW,
			}
			continue
		}
		if (i%2 == 1 && nh/2 <= p.MinSize+2*pn.BW) || (i%2 == 0 && nw/2 <= p.MinSize+2*pn.BW) {
			split = false
		}
		if split && i < n-1 {
			if i%2 == 1 {
				next := i + 1
				if (n-1)%2 == 1 && i+2 == n-1 {
					// the last two clients share a cut; keep their
					// weights in sync, favouring the most recently
					// focused one
					n1, n2 = i+1, i+2
					if panes[n1].StackRank <= panes[n2].StackRank {
						cf[n2] = cf[n1]
					} else {
						next = n2
						cf[n1] = cf[n2]
					}
				}
				scale := min(fibMaxScale, max(fibMinScale, cf[i]/cf[next]))
				if scale == 1.0 {
					cf[i], cf[next] = 1.0, 1.0
				}
				if scale == fibMaxScale && cf[i] > 1.0 {
					cf[i], cf[next] = fibMaxScale, 1.0
				}
				if scale == fibMaxScale && cf[next] < 1.0 {
					cf[i], cf[next] = 1.0, fibMinCfact
				}
				if n1 >= 0 && n2 >= 0 {
					if n2 == next {
						cf[n1] = cf[n2]
					} else {
						cf[n2] = cf[n1]
					}
				}
				nv := int(float64(nh/2) * scale)
				hrest = nh - 2*nv
				nh = nv
			} else {
				nv := nw / 2
				wrest = nw - 2*nv
				nw = nv
			}
			if i%4 == 2 && !dwindle {
				nx += nw
			} else if i%4 == 3 && !dwindle {
				ny += nh
			}
		}

		switch i % 4 {
		case 0:
			if dwindle {
				ny += nh
				nh += hrest
			} else {
				nh -= hrest
				ny -= nh
			}
		case 1:
			nx += nw
			nw += wrest
		case 2:
			ny += nh
			nh += hrest
			if i < n-1 {
				nw += wrest
			}
		case 3:
			if dwindle {
				nx += nw
				nw -= wrest
			} else {
				nw -= wrest
				nx -= nw
				nh += hrest
			}
		}
		if i == 0 {
			if n != 1 {
				nw = a.W - int(float64(a.W)*(1-p.MFact))
				wrest = 0
			}
			ny = a.Y
		} else if i == 1 {
			nw = a.W - nw
		}
		res.Rects[i] = Rect{nx, ny, nw - 2*pn.BW, nh - 2*pn.BW}
	}
	return res
}
