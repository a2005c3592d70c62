package morph

// tokenInfo is one analyzed token with its IPA dictionary feature row.
// Feature layout: 0=POS, 1=POS detail 1, 2=POS detail 2, 3=POS detail 3,
// 4=conjugation type, 5=conjugation form, 6=base form, 7=reading,
// 8=pronunciation. Unknown words carry a short row.
type tokenInfo struct {
	surface  string
	features []string
}

func (t tokenInfo) featureAt(i int) string {
	if i < 0 || i >= len(t.features) {
		return ""
	}
	return t.features[i]
}

func (t tokenInfo) pos() string {
	if p := t.featureAt(0); p != "" {
		return p
	}
	return "未知語"
}

func (t tokenInfo) posDetail1() string { return t.featureAt(1) }
func (t tokenInfo) conjForm() string   { return t.featureAt(5) }
func (t tokenInfo) baseForm() string   { return t.featureAt(6) }
func (t tokenInfo) reading() string    { return t.featureAt(7) }

// isBoundary reports whether a bunsetsu boundary falls between current and
// next.
func isBoundary(current, next tokenInfo) bool {
	pos := current.pos()

	if pos == "記号" {
		switch current.surface {
		case "、", "。", "！", "？", "…":
			return true
		case "」", "』", "）", "】":
			return true
		case "「", "『", "（", "【":
			return false
		}
	}

	switch pos {
	case "助詞":
		return particleBoundary(current, next)
	case "動詞", "形容詞", "形容動詞":
		return conjugationBoundary(current, next)
	case "助動詞":
		return auxiliaryBoundary(current, next)
	case "接続詞", "感動詞":
		// Conjunctions and interjections stand as their own bunsetsu.
		return true
	case "接頭詞":
		return false
	case "名詞":
		return nounBoundary(current, next)
	case "副詞":
		return next.pos() != "助詞"
	case "連体詞":
		return false
	default:
		return false
	}
}

// particleBoundary decides boundaries after a particle by its subtype.
func particleBoundary(current, next tokenInfo) bool {
	nextPOS := next.pos()

	switch current.posDetail1() {
	case "格助詞":
		switch current.surface {
		case "の":
			// Adnominal の binds to the following noun; split only when a
			// yougen or auxiliary follows.
			switch nextPOS {
			case "動詞", "形容詞", "形容動詞", "助動詞":
				return true
			default:
				return false
			}
		case "と":
			// Quotative と stays attached to its reporting verb.
			switch next.baseForm() {
			case "いう", "言う", "思う", "考える", "する", "なる":
				return false
			}
			return true
		default:
			return true
		}
	case "係助詞", "副助詞":
		return true
	case "接続助詞":
		switch current.surface {
		case "て", "で":
			// Linking て/で binds to auxiliary and non-independent verbs.
			if nextPOS == "動詞" {
				if detail := next.posDetail1(); detail != "" {
					return detail != "非自立"
				}
			}
			return nextPOS != "助動詞"
		default:
			return true
		}
	case "終助詞":
		return true
	case "連体化":
		return false
	case "並立助詞":
		return true
	default:
		return nextPOS != "助詞" && nextPOS != "助動詞"
	}
}

// conjugationBoundary decides boundaries after a yougen by its
// conjugation form.
func conjugationBoundary(current, next tokenInfo) bool {
	nextPOS := next.pos()

	switch current.conjForm() {
	case "終止形", "基本形":
		return nextPOS != "助動詞" && nextPOS != "助詞"
	case "連体形":
		return false
	case "連用形":
		switch nextPOS {
		case "助動詞":
			return false
		case "動詞":
			// Compound verbs keep their non-independent tail attached.
			if detail := next.posDetail1(); detail != "" {
				return detail == "非自立"
			}
			return true
		default:
			return true
		}
	case "仮定形":
		return nextPOS == "助詞"
	case "命令形":
		return true
	default:
		return false
	}
}

// auxiliaryBoundary decides boundaries after an auxiliary verb.
func auxiliaryBoundary(current, next tokenInfo) bool {
	nextPOS := next.pos()

	switch current.surface {
	case "いる", "ある", "おる":
		return nextPOS == "助詞" || nextPOS == "記号"
	case "ない", "ぬ", "ん":
		if nextPOS == "助詞" {
			// 〜ないで / 〜ないから / 〜ないの keep the particle attached
			// to the next bunsetsu.
			for _, r := range next.surface {
				return r == 'で' || r == 'か' || r == 'の'
			}
			return true
		}
		return nextPOS == "記号"
	case "たい", "たがる":
		return nextPOS == "助詞" || nextPOS == "記号"
	case "れる", "られる", "せる", "させる":
		return nextPOS != "助動詞"
	default:
		return nextPOS == "助詞" || nextPOS == "記号"
	}
}

// nounBoundary decides boundaries after a noun.
func nounBoundary(current, next tokenInfo) bool {
	switch next.pos() {
	case "助詞", "接尾詞":
		return false
	case "名詞":
		if current.posDetail1() == "固有名詞" {
			// Proper nouns usually end a bunsetsu unless a suffix or
			// non-independent noun follows.
			switch next.posDetail1() {
			case "接尾", "非自立":
				return false
			case "":
				return true
			default:
				return true
			}
		}
		return false
	default:
		return false
	}
}
