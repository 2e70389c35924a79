// Package journal implements the monthly org-file journal: where each
// month's file lives, how day and entry headings are materialized inside it,
// and how the most recent entry is located.
//
// A monthly file looks like:
//
//	#+TITLE: Journal 2025-06
//
//	* Sunday, 15 June
//	:PROPERTIES:
//	:CREATED:  [2025-06-15 Sun 09:30]
//	:END:
//
//	** 0930 Went for a run
//
//	** 1405
//
// Day headings are level 1 and unique per file. Entry headings are level 2
// and always belong to the day heading above them.
package journal
