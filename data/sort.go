package data

import "github.com/ttn-nguyen42/natq/util"

// Sort orders the queue by util.NaturalCompare.
func (q *Queue) Sort() {
	q.SortFunc(util.NaturalCompare)
}

// SortFunc merge sorts the queue by relinking its nodes. Equal elements keep
// their relative order. Nothing is allocated or released.
func (q *Queue) SortFunc(cmp func(a, b string) int) {
	if !q.valid() || q.size <= 1 {
		return
	}
	q.head = mergeSort(q.head, cmp)

	tail := q.head
	for tail.next != nil {
		tail = tail.next
	}
	q.tail = tail
}

// mergeSort takes ownership of the chain starting at head and returns the
// head of the sorted chain.
func mergeSort(head *node, cmp func(a, b string) int) *node {
	if head == nil || head.next == nil {
		return head
	}
	left, right := split(head)
	return merge(mergeSort(left, cmp), mergeSort(right, cmp), cmp)
}

// split cuts the chain after its midpoint.
func split(head *node) (*node, *node) {
	slow, fast := head, head.next
	for fast != nil && fast.next != nil {
		slow = slow.next
		fast = fast.next.next
	}
	right := slow.next
	slow.next = nil
	return head, right
}

func merge(left, right *node, cmp func(a, b string) int) *node {
	var head, last *node
	for left != nil && right != nil {
		var n *node
		if cmp(left.value, right.value) <= 0 {
			n, left = left, left.next
		} else {
			n, right = right, right.next
		}
		n.next = nil
		if last == nil {
			head = n
		} else {
			last.next = n
		}
		last = n
	}

	rest := left
	if rest == nil {
		rest = right
	}
	if last == nil {
		return rest
	}
	last.next = rest
	return head
}
