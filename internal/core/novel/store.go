// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package novel

import "context"

// # Novel & Chapter Data Access

// Repository defines the data access contract for novels and chapters.
type Repository interface {

	/*
		TitleExists reports whether a novel with exactly this title is stored.

		Parameters:
		  - context: context.Context
		  - title: string (compared byte for byte)

		Returns:
		  - bool: true when present
		  - error: Storage failures
	*/
	TitleExists(context context.Context, title string) (bool, error)

	/*
		Create persists a novel and all of its chapters atomically.

		Parameters:
		  - context: context.Context
		  - novel: *Novel (timestamps are filled in on success)
		  - chapters: []Chapter (NovelID is set from novel.ID)

		Returns:
		  - error: DUPLICATE on a title collision, DATABASE otherwise
	*/
	Create(context context.Context, novel *Novel, chapters []Chapter) error
}
