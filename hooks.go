package jsonio

import "github.com/reoring/jsonio/codec"

// Hooks observe the read pipeline. Every field is optional. Hooks cannot
// alter control flow; their panics are not recovered.
type Hooks struct {
	BeforeInstall    func(id codec.ID)
	AfterInstall     func(id codec.ID, err error)
	BeforeRead       func(src Classified)
	AfterRead        func(src Classified, err error)
	BeforeValidation func(v any)
	AfterValidation  func(v any, err error)
}

func (h *Hooks) beforeInstall(id codec.ID) {
	if h != nil && h.BeforeInstall != nil {
		h.BeforeInstall(id)
	}
}

func (h *Hooks) afterInstall(id codec.ID, err error) {
	if h != nil && h.AfterInstall != nil {
		h.AfterInstall(id, err)
	}
}

func (h *Hooks) beforeRead(src Classified) {
	if h != nil && h.BeforeRead != nil {
		h.BeforeRead(src)
	}
}

func (h *Hooks) afterRead(src Classified, err error) {
	if h != nil && h.AfterRead != nil {
		h.AfterRead(src, err)
	}
}

func (h *Hooks) beforeValidation(v any) {
	if h != nil && h.BeforeValidation != nil {
		h.BeforeValidation(v)
	}
}

func (h *Hooks) afterValidation(v any, err error) {
	if h != nil && h.AfterValidation != nil {
		h.AfterValidation(v, err)
	}
}
