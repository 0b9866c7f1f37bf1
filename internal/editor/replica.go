package editor

import (
	"github.com/KirkDiggler/codearena/internal/crdt"
)

// replica exposes the session's Doc to the reconcile controller. Every local
// replace is broadcast to the mesh.
type replica struct {
	doc     *crdt.Doc
	publish func(crdt.Update)
}

func (r *replica) Text() string {
	return r.doc.Text()
}

func (r *replica) Replace(text string) {
	r.publish(r.doc.Replace(text))
}
