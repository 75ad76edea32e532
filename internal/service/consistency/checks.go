package consistency

import "github.com/heartmarshall/sapl-backend/internal/domain"

// FindDuplicates groups protocols by (number, year) and returns the groups
// with more than one row. Groups keep first-seen order and each is
// represented by its first row, so the result depends only on input order.
func FindDuplicates(protocols []domain.Protocol) []domain.DuplicateProtocol {
	type group struct {
		first domain.Protocol
		count int
	}

	var order []domain.ProtocolKey
	groups := make(map[domain.ProtocolKey]*group)
	for _, p := range protocols {
		key := p.Key()
		g, ok := groups[key]
		if !ok {
			g = &group{first: p}
			groups[key] = g
			order = append(order, key)
		}
		g.count++
	}

	var out []domain.DuplicateProtocol
	for _, key := range order {
		if g := groups[key]; g.count > 1 {
			out = append(out, domain.DuplicateProtocol{Protocol: g.first, Count: g.count})
		}
	}
	return out
}

// FindOrphans returns the matters whose declared protocol is not in known,
// in input order. Matters without a protocol number, or with number 0, are
// skipped.
func FindOrphans(matters []domain.Matter, known map[domain.ProtocolKey]struct{}) []domain.OrphanMatter {
	var out []domain.OrphanMatter
	for _, m := range matters {
		if m.ProtocolNumber == nil || *m.ProtocolNumber == 0 {
			continue
		}
		key := domain.ProtocolKey{Number: *m.ProtocolNumber, Year: m.Year}
		if _, ok := known[key]; ok {
			continue
		}
		out = append(out, domain.OrphanMatter{Matter: m, Year: m.Year, ProtocolNumber: *m.ProtocolNumber})
	}
	return out
}

// protocolKeys returns the set of keys present in protocols.
func protocolKeys(protocols []domain.Protocol) map[domain.ProtocolKey]struct{} {
	keys := make(map[domain.ProtocolKey]struct{}, len(protocols))
	for _, p := range protocols {
		keys[p.Key()] = struct{}{}
	}
	return keys
}
