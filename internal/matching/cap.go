package matching

// ApplyMatchingCap clamps every project's match to capInUSD and
// redistributes the clipped surplus proportionally across the projects
// still under the cap. Redistribution can push more projects over the
// cap, so passes repeat until no surplus remains or every project is
// capped. The loop is bounded: each extra pass caps at least one more
// project.
//
// The returned value is the excess that could not be redistributed
// because all projects reached the cap. When it is non-zero the pot is
// deliberately left partially undistributed.
func ApplyMatchingCap(matches []ProjectMatch, totalPot, totalMatchInUSD, capInUSD float64) float64 {
	if capInUSD <= 0 || len(matches) == 0 {
		return 0
	}

	excess := 0.0

	for pass := 0; pass <= len(matches); pass++ {
		excess = 0
		uncappedTotal := 0.0

		for i := range matches {
			m := &matches[i]
			if m.MatchAmountInUSD >= capInUSD {
				excess += m.MatchAmountInUSD - capInUSD
				setMatchInUSD(m, capInUSD, totalPot, totalMatchInUSD)
			} else {
				uncappedTotal += m.MatchAmountInUSD
			}
		}

		if excess == 0 || uncappedTotal == 0 {
			break
		}

		scale := 1 + excess/uncappedTotal
		for i := range matches {
			m := &matches[i]
			if m.MatchAmountInUSD < capInUSD {
				setMatchInUSD(m, m.MatchAmountInUSD*scale, totalPot, totalMatchInUSD)
			}
		}
	}

	return excess
}

// setMatchInUSD updates a project's USD match and keeps its derived
// percentage and token amount consistent.
func setMatchInUSD(m *ProjectMatch, amountInUSD, totalPot, totalMatchInUSD float64) {
	m.MatchAmountInUSD = amountInUSD
	m.MatchPoolPercentage = amountInUSD / totalMatchInUSD
	m.MatchAmountInToken = m.MatchPoolPercentage * totalPot
}
