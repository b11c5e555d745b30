// Package events carries notifications about committed task changes.
//
// Services emit TaskEvent values through an EventEmitter without knowing which
// handlers consume them. The in-memory emitter dispatches synchronously; the
// audit handler writes each event to the structured log.
package events
