package regarray

// foldQuantifiers attaches every quantifier token to the token right
// before it and drops the quantifier from the stream. Tokens that receive
// no quantifier get One.
//
// A quantifier is rejected when it comes first, when the preceding token
// already has a quantifier, or when it follows a group-open.
func foldQuantifiers(source string, tokens []Token) ([]Token, error) {
	folded := make([]Token, 0, len(tokens))
	// quantified[i] is set once folded[i] has received a quantifier.
	quantified := make([]bool, 0, len(tokens))

	for _, tok := range tokens {
		if tok.Kind != TokenQuantifier {
			tok.Quantity = One
			folded = append(folded, tok)
			quantified = append(quantified, false)
			continue
		}

		last := len(folded) - 1
		switch {
		case last < 0:
			return nil, tokenError(ErrQuantifierPlacement, source, tok,
				"%s has nothing to quantify", tok.Text)
		case quantified[last]:
			return nil, tokenError(ErrQuantifierPlacement, source, tok,
				"%s follows another quantifier", tok.Text)
		case folded[last].Kind == TokenGroup && folded[last].Open:
			return nil, tokenError(ErrQuantifierPlacement, source, tok,
				"%s follows a group-open", tok.Text)
		}

		folded[last].Quantity = tok.Quantity
		quantified[last] = true
	}

	return folded, nil
}
