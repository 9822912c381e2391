package listbacking

import "container/list"

// linked backs the config file's "list: linkedlist" setting with the
// standard library's doubly linked list. O(1) push/pop at both ends,
// O(n) Range — the asymptotic tradeoff this choice is allowed to carry.
type linked struct {
	l *list.List
}

func newLinked() *linked {
	return &linked{l: list.New()}
}

func (d *linked) Len() int { return d.l.Len() }

func (d *linked) PushFront(v string) { d.l.PushFront(v) }
func (d *linked) PushBack(v string)  { d.l.PushBack(v) }

func (d *linked) PopFront() (string, bool) {
	e := d.l.Front()
	if e == nil {
		return "", false
	}
	d.l.Remove(e)
	return e.Value.(string), true
}

func (d *linked) PopBack() (string, bool) {
	e := d.l.Back()
	if e == nil {
		return "", false
	}
	d.l.Remove(e)
	return e.Value.(string), true
}

func (d *linked) Range(start, stop int) []string {
	if start > stop || d.l.Len() == 0 {
		return nil
	}
	out := make([]string, 0, stop-start+1)
	i := 0
	for e := d.l.Front(); e != nil; e = e.Next() {
		if i > stop {
			break
		}
		if i >= start {
			out = append(out, e.Value.(string))
		}
		i++
	}
	return out
}
