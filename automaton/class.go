// Copyright 2017-2018 Denis Bernard <db047h@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

package automaton

import "math/bits"

// A Class is a set of Latin-1 characters, stored as a 256-bit bitset.
type Class [4]uint64

// AnyChar returns the class of all characters.
func AnyChar() Class {
	return Class{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)}
}

// Has returns true if c is in the class.
func (cl *Class) Has(c byte) bool {
	return cl[c>>6]&(1<<(c&63)) != 0
}

// Add adds c to the class.
func (cl *Class) Add(c byte) {
	cl[c>>6] |= 1 << (c & 63)
}

// AddRange adds all characters from lo to hi inclusive.
func (cl *Class) AddRange(lo, hi byte) {
	for c := int(lo); c <= int(hi); c++ {
		cl.Add(byte(c))
	}
}

// Negate returns the complement of cl.
func (cl Class) Negate() Class {
	for i := range cl {
		cl[i] = ^cl[i]
	}
	return cl
}

// Union returns the union of cl and o.
func (cl Class) Union(o Class) Class {
	for i := range cl {
		cl[i] |= o[i]
	}
	return cl
}

// IsEmpty returns true if the class contains no characters.
func (cl *Class) IsEmpty() bool {
	return cl[0]|cl[1]|cl[2]|cl[3] == 0
}

// Len returns the number of characters in the class.
func (cl *Class) Len() int {
	return bits.OnesCount64(cl[0]) + bits.OnesCount64(cl[1]) + bits.OnesCount64(cl[2]) + bits.OnesCount64(cl[3])
}
