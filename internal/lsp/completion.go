package lsp

import (
	"fmt"

	"github.com/leapstack-labs/sqlpad/pkg/complete"
)

var itemKinds = map[complete.Kind]CompletionItemKind{
	complete.KindKeyword:  CompletionItemKindKeyword,
	complete.KindTable:    CompletionItemKindClass,
	complete.KindColumn:   CompletionItemKindField,
	complete.KindFunction: CompletionItemKindFunction,
}

// completionItems converts engine suggestions into items that replace the
// word under cursor. SortText keeps the engine's ranking.
func completionItems(doc *Document, cursor int, suggestions []complete.Suggestion) []CompletionItem {
	start, end := complete.WordAt(doc.Content, cursor)
	word := Range{Start: doc.OffsetToPosition(start), End: doc.OffsetToPosition(end)}

	items := make([]CompletionItem, 0, len(suggestions))
	for i, sg := range suggestions {
		insert := sg.Text
		if sg.Kind == complete.KindKeyword {
			insert += " "
		}
		items = append(items, CompletionItem{
			Label:    sg.Text,
			Kind:     itemKinds[sg.Kind],
			Detail:   sg.Description,
			SortText: fmt.Sprintf("%02d", i),
			TextEdit: &TextEdit{Range: word, NewText: insert},
		})
	}
	return items
}
