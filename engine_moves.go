package rubik

// Single-move shortcuts. Each queues one move and returns at once; the turn
// animates over the following Update calls.

// U queues U: up clockwise.
func (e *Engine) U() { e.sched.Enqueue(U) }

// UPrime queues U': up counter-clockwise.
func (e *Engine) UPrime() { e.sched.Enqueue(UPrime) }

// U2 queues U2: up 180.
func (e *Engine) U2() { e.sched.Enqueue(U2) }

// L queues L: left clockwise.
func (e *Engine) L() { e.sched.Enqueue(L) }

// LPrime queues L': left counter-clockwise.
func (e *Engine) LPrime() { e.sched.Enqueue(LPrime) }

// L2 queues L2: left 180.
func (e *Engine) L2() { e.sched.Enqueue(L2) }

// F queues F: front clockwise.
func (e *Engine) F() { e.sched.Enqueue(F) }

// FPrime queues F': front counter-clockwise.
func (e *Engine) FPrime() { e.sched.Enqueue(FPrime) }

// F2 queues F2: front 180.
func (e *Engine) F2() { e.sched.Enqueue(F2) }

// R queues R: right clockwise.
func (e *Engine) R() { e.sched.Enqueue(R) }

// RPrime queues R': right counter-clockwise.
func (e *Engine) RPrime() { e.sched.Enqueue(RPrime) }

// R2 queues R2: right 180.
func (e *Engine) R2() { e.sched.Enqueue(R2) }

// B queues B: back clockwise.
func (e *Engine) B() { e.sched.Enqueue(B) }

// BPrime queues B': back counter-clockwise.
func (e *Engine) BPrime() { e.sched.Enqueue(BPrime) }

// B2 queues B2: back 180.
func (e *Engine) B2() { e.sched.Enqueue(B2) }

// D queues D: down clockwise.
func (e *Engine) D() { e.sched.Enqueue(D) }

// DPrime queues D': down counter-clockwise.
func (e *Engine) DPrime() { e.sched.Enqueue(DPrime) }

// D2 queues D2: down 180.
func (e *Engine) D2() { e.sched.Enqueue(D2) }

// SV queues V: vertical slice clockwise, like L.
func (e *Engine) SV() { e.sched.Enqueue(V) }

// SVPrime queues V': vertical slice counter-clockwise.
func (e *Engine) SVPrime() { e.sched.Enqueue(VPrime) }

// SV2 queues V2: vertical slice 180.
func (e *Engine) SV2() { e.sched.Enqueue(V2) }

// SH queues H: horizontal slice clockwise, like D.
func (e *Engine) SH() { e.sched.Enqueue(H) }

// SHPrime queues H': horizontal slice counter-clockwise.
func (e *Engine) SHPrime() { e.sched.Enqueue(HPrime) }

// SH2 queues H2: horizontal slice 180.
func (e *Engine) SH2() { e.sched.Enqueue(H2) }

// SS queues S: standing slice clockwise, like F.
func (e *Engine) SS() { e.sched.Enqueue(S) }

// SSPrime queues S': standing slice counter-clockwise.
func (e *Engine) SSPrime() { e.sched.Enqueue(SPrime) }

// SS2 queues S2: standing slice 180.
func (e *Engine) SS2() { e.sched.Enqueue(S2) }
