package regarray

// parseTokens builds an AST from a folded token stream.
//
// Each call owns its slice of the stream; nested groups are parsed by a
// recursive call on the sub-slice strictly between the group's open and
// close tokens. A group takes the quantity folded onto its closing token,
// since quantifiers are written after ")".
func parseTokens(source string, tokens []Token) ([]Node, error) {
	nodes := make([]Node, 0, len(tokens))

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		switch {
		case tok.Kind == TokenName:
			nodes = append(nodes, Node{
				Atom:     Leaf{Name: tok.Name, Validator: tok.Validator},
				Quantity: tok.Quantity,
			})

		case tok.Kind == TokenGroup && tok.Open:
			end := matchingClose(tokens, i)
			if end < 0 {
				return nil, tokenError(ErrUnbalancedGroup, source, tok, "unclosed %c", GroupOpen)
			}
			children, err := parseTokens(source, tokens[i+1:end])
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, Node{
				Atom:     Group{Nodes: children},
				Quantity: tokens[end].Quantity,
			})
			i = end

		case tok.Kind == TokenGroup:
			return nil, tokenError(ErrUnbalancedGroup, source, tok, "unexpected %c", GroupClose)

		default:
			return nil, tokenError(ErrParserInternal, source, tok,
				"unexpected %s token %q", tok.Kind, tok.Text)
		}
	}

	return nodes, nil
}

// matchingClose returns the index of the close token that balances the
// open token at tokens[open], or -1.
func matchingClose(tokens []Token, open int) int {
	depth := 0
	for i := open; i < len(tokens); i++ {
		if tokens[i].Kind != TokenGroup {
			continue
		}
		if tokens[i].Open {
			depth++
			continue
		}
		depth--
		if depth == 0 {
			return i
		}
	}
	return -1
}
