package blob

import "io"

// progressReader wraps a payload reader and reports transfer percentage.
// Callbacks fire only when the integer percentage advances, so a caller
// never sees the same or a smaller value twice.
type progressReader struct {
	r          io.Reader
	total      int64
	read       int64
	last       int
	onProgress ProgressFunc
}

func newProgressReader(r io.Reader, total int64, onProgress ProgressFunc) io.Reader {
	if onProgress == nil || total <= 0 {
		return r
	}
	return &progressReader{r: r, total: total, last: -1, onProgress: onProgress}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		pct := int(p.read * 100 / p.total)
		if pct > 100 {
			pct = 100
		}
		if pct > p.last {
			p.last = pct
			p.onProgress(pct)
		}
	}
	return n, err
}
