package rdf

// Byte sizes feed the store's size ceilings. A term's size is the length
// of every string it carries, including language tags and datatypes.

// Size returns the byte size of the node.
func (n Node) Size() uint64 {
	return uint64(len(n.Namespace) + len(n.Value))
}

// Size returns the byte size of the subject.
func (s Subject) Size() uint64 {
	if s.Kind == SubjectBlank {
		return uint64(len(s.Blank))
	}
	return s.Node.Size()
}

// Size returns the byte size of the literal.
func (l Literal) Size() uint64 {
	switch l.Kind {
	case LiteralLang:
		return uint64(len(l.Value) + len(l.Lang))
	case LiteralTyped:
		return uint64(len(l.Value)) + l.Datatype.Size()
	default:
		return uint64(len(l.Value))
	}
}

// Size returns the byte size of the object.
func (o Object) Size() uint64 {
	switch o.Kind {
	case ObjectBlank:
		return uint64(len(o.Blank))
	case ObjectLiteral:
		return o.Literal.Size()
	default:
		return o.Node.Size()
	}
}

// Size returns the byte size of the triple.
func (t Triple) Size() uint64 {
	return t.Subject.Size() + t.Predicate.Size() + t.Object.Size()
}
