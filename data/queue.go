package data

import (
	"fmt"
	"strings"
	"unsafe"
)

var (
	ErrInvalidQueue error = fmt.Errorf("invalid queue")
	ErrEmptyQueue   error = fmt.Errorf("queue is empty")
	ErrAllocation   error = fmt.Errorf("allocation failed")
)

var (
	queueBlockSize = int(unsafe.Sizeof(Queue{}))
	nodeBlockSize  = int(unsafe.Sizeof(node{}))
)

type node struct {
	value    string
	next     *node
	block    uint64
	valBlock uint64
}

// Queue is a singly linked queue of strings with cached head, tail and size.
// It is not safe for concurrent use.
type Queue struct {
	head  *node
	tail  *node
	size  int
	alloc Allocator
	block uint64
	freed bool
}

func NewQueue(opts ...Option) (*Queue, error) {
	o := &Options{Allocator: heapAllocator{}}
	for _, opt := range opts {
		opt(o)
	}
	block, err := o.Allocator.Alloc(queueBlockSize)
	if err != nil {
		return nil, fmt.Errorf("%w: queue: %w", ErrAllocation, err)
	}
	return &Queue{
		head:  nil,
		tail:  nil,
		size:  0,
		alloc: o.Allocator,
		block: block,
	}, nil
}

func (q *Queue) valid() bool {
	return q != nil && !q.freed
}

// Free releases every node, every value and the queue itself.
// Calling it on a nil or already freed queue does nothing.
func (q *Queue) Free() {
	if !q.valid() {
		return
	}
	for q.head != nil {
		n := q.head
		q.head = n.next
		q.release(n)
	}
	q.tail = nil
	q.size = 0
	q.freed = true
	q.alloc.Release(q.block)
}

func (q *Queue) release(n *node) {
	n.next = nil
	n.value = ""
	q.alloc.Release(n.valBlock)
	q.alloc.Release(n.block)
}

// newNode obtains storage for a node holding a private copy of value.
// On failure nothing stays allocated.
func (q *Queue) newNode(value string) (*node, error) {
	block, err := q.alloc.Alloc(nodeBlockSize)
	if err != nil {
		return nil, fmt.Errorf("%w: node: %w", ErrAllocation, err)
	}
	valBlock, err := q.alloc.Alloc(len(value) + 1)
	if err != nil {
		q.alloc.Release(block)
		return nil, fmt.Errorf("%w: value: %w", ErrAllocation, err)
	}
	return &node{
		value:    strings.Clone(value),
		block:    block,
		valBlock: valBlock,
	}, nil
}

func (q *Queue) InsertHead(value string) error {
	if !q.valid() {
		return ErrInvalidQueue
	}
	n, err := q.newNode(value)
	if err != nil {
		return err
	}
	n.next = q.head
	q.head = n
	if q.tail == nil {
		q.tail = n
	}
	q.size += 1
	return nil
}

func (q *Queue) InsertTail(value string) error {
	if !q.valid() {
		return ErrInvalidQueue
	}
	n, err := q.newNode(value)
	if err != nil {
		return err
	}
	if q.tail != nil {
		q.tail.next = n
	}
	q.tail = n
	if q.head == nil {
		q.head = n
	}
	q.size += 1
	return nil
}

// RemoveHead unlinks the first element. When buf is not nil, up to len(buf)-1
// bytes of the value are copied into it and the rest of buf is zeroed, so the
// copy is always zero terminated. A nil buf discards the value.
func (q *Queue) RemoveHead(buf []byte) error {
	if !q.valid() {
		return ErrInvalidQueue
	}
	if q.size == 0 {
		return ErrEmptyQueue
	}
	n := q.head
	if len(buf) > 0 {
		c := copy(buf[:len(buf)-1], n.value)
		clear(buf[c:])
	}
	q.head = n.next
	if q.head == nil {
		q.tail = nil
	}
	q.size -= 1
	q.release(n)
	return nil
}

// PopHead removes the first element and returns a copy of its value.
func (q *Queue) PopHead() (string, error) {
	if !q.valid() {
		return "", ErrInvalidQueue
	}
	if q.size == 0 {
		return "", ErrEmptyQueue
	}
	value := q.head.value
	if err := q.RemoveHead(nil); err != nil {
		return "", err
	}
	return value, nil
}

func (q *Queue) Size() int {
	if !q.valid() {
		return 0
	}
	return q.size
}

// Values returns a copy of the stored values from head to tail.
func (q *Queue) Values() []string {
	if !q.valid() {
		return nil
	}
	result := make([]string, 0, q.size)
	for curr := q.head; curr != nil; curr = curr.next {
		result = append(result, curr.value)
	}
	return result
}

// Reverse relinks the existing nodes in the opposite order.
func (q *Queue) Reverse() {
	if !q.valid() || q.size == 0 {
		return
	}
	var prev *node
	curr := q.head
	for curr != nil {
		next := curr.next
		curr.next = prev
		prev = curr
		curr = next
	}
	q.head, q.tail = q.tail, q.head
}
