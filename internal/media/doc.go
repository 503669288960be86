package media

// Package media implements the media session poller: a background loop that
// queries the OS media session capability (MPRIS over the D-Bus session bus),
// normalizes missing or failing data into empty snapshots, and hands results to
// the presentation layer through two independent callbacks. It also provides
// fire-and-forget transport controls for the active player.
