package mpn

import "zint/internal/alloc"

// Pow1 computes w = base**e by binary exponentiation and returns the
// normalized result length. base must be normalized and nonzero, e >= 1,
// and len(w) >= len(base)*e, which bounds every intermediate. w must not
// overlap base.
func Pow1(sc *alloc.Scope, w, base []Word, e uint64) (int, error) {
	// The running product carries an extra word beyond len(base)*e until
	// its seed word is absorbed, so scratch is one word larger than w.
	a, err := sc.Alloc(len(w) + 1)
	if err != nil {
		return 0, err
	}
	t, err := sc.Alloc(len(w) + 1)
	if err != nil {
		return 0, err
	}
	copy(a, base)
	al := len(base)
	w[0] = 1
	wl := 1

	for {
		if e&1 == 1 {
			if wl >= al {
				Mul(t[:wl+al], w[:wl], a[:al])
			} else {
				Mul(t[:wl+al], a[:al], w[:wl])
			}
			wl += al
			if t[wl-1] == 0 {
				wl--
			}
			copy(w[:wl], t[:wl])
		}
		e >>= 1
		if e == 0 {
			break
		}
		Sqr(t[:2*al], a[:al])
		al *= 2
		if t[al-1] == 0 {
			al--
		}
		copy(a[:al], t[:al])
	}
	sc.Release(t)
	sc.Release(a)
	return wl, nil
}
