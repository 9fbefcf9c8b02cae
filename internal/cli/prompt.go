package cli

import (
	"fmt"
	"io"
	"strconv"

	"qikfiller/internal/domain"
	"qikfiller/internal/errors"
	"qikfiller/internal/resolve"
)

// NewStdinChooser builds the production disambiguation prompt: the candidate
// set is printed as an aligned table and a single id is read from in. There
// is no re-prompt; a bad answer propagates as an error.
func NewStdinChooser(in io.Reader, out io.Writer) resolve.Chooser {
	return func(kind domain.Kind, candidates []resolve.Candidate) (int64, error) {
		printCandidates(out, candidates)
		fmt.Fprintf(out, "Please enter the id of the desired %s from above: ", kind)

		var input string
		fmt.Fscanln(in, &input)

		id, err := strconv.ParseInt(input, 10, 64)
		if err != nil {
			return 0, errors.NewAmbiguousInputError(input, "not a number")
		}
		return id, nil
	}
}

// printCandidates writes the id/name table, ids right-justified and names
// left-justified, each column padded to its widest value. Task candidates
// carry the owning client as a middle column.
func printCandidates(out io.Writer, candidates []resolve.Candidate) {
	idWidth, nameWidth, clientWidth := 0, 0, 0
	for _, candidate := range candidates {
		idWidth = max(idWidth, len(strconv.FormatInt(candidate.ID, 10)))
		nameWidth = max(nameWidth, len(candidate.Name))
		clientWidth = max(clientWidth, len(candidate.ClientName))
	}

	for _, candidate := range candidates {
		if clientWidth > 0 {
			fmt.Fprintf(out, "%*d: %-*s: %-*s\n", idWidth, candidate.ID, clientWidth, candidate.ClientName, nameWidth, candidate.Name)
		} else {
			fmt.Fprintf(out, "%*d: %-*s\n", idWidth, candidate.ID, nameWidth, candidate.Name)
		}
	}
}
