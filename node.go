// Copyright 2024 The Marco Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package marco

import "unsafe"

const (
	nodeTypeBlock = 1 + iota
	nodeTypeInline
)

// Node is a pointer to a [Block] or an [Inline].
// Nodes can be compared for equality using the == operator.
type Node struct {
	ptr unsafe.Pointer
	typ uint8
}

// Block returns the referenced block, or nil if the node does not
// reference a block.
func (n Node) Block() *Block {
	if n.typ != nodeTypeBlock {
		return nil
	}
	return (*Block)(n.ptr)
}

// Inline returns the referenced inline, or nil if the node does not
// reference an inline.
func (n Node) Inline() *Inline {
	if n.typ != nodeTypeInline {
		return nil
	}
	return (*Inline)(n.ptr)
}

// Kind returns the BlockKind or InlineKind of the underlying node,
// widened to int, or 0 for the zero Node.
func (n Node) Kind() int {
	if b := n.Block(); b != nil {
		return int(b.Kind())
	}
	if i := n.Inline(); i != nil {
		return int(i.Kind())
	}
	return 0
}

// Span returns the span of the referenced node, or an invalid span if
// the Node is the zero value.
func (n Node) Span() Span {
	if b := n.Block(); b != nil {
		return b.Span()
	}
	if i := n.Inline(); i != nil {
		return i.Span()
	}
	return NullSpan()
}

// ChildCount returns the number of children the node has. Calling
// ChildCount on the zero Node returns 0.
func (n Node) ChildCount() int {
	if b := n.Block(); b != nil {
		return b.ChildCount()
	}
	if i := n.Inline(); i != nil {
		return i.ChildCount()
	}
	return 0
}

// Child returns the i'th child of the node.
func (n Node) Child(i int) Node {
	if b := n.Block(); b != nil {
		return b.Child(i)
	}
	if i2 := n.Inline(); i2 != nil {
		return i2.Child(i).AsNode()
	}
	panic("Child on zero Node")
}

// AsNode converts the block to a [Node].
func (b *Block) AsNode() Node {
	if b == nil {
		return Node{}
	}
	return Node{typ: nodeTypeBlock, ptr: unsafe.Pointer(b)}
}

// AsNode converts the inline to a [Node].
func (inline *Inline) AsNode() Node {
	if inline == nil {
		return Node{}
	}
	return Node{typ: nodeTypeInline, ptr: unsafe.Pointer(inline)}
}
