package mockdata

import "starsearch/internal/starwars"

var characters = []starwars.Record{
	{Name: "Luke Skywalker", URL: "https://swapi.dev/api/people/1/"},
	{Name: "C-3PO", URL: "https://swapi.dev/api/people/2/"},
	{Name: "R2-D2", URL: "https://swapi.dev/api/people/3/"},
	{Name: "Darth Vader", URL: "https://swapi.dev/api/people/4/"},
	{Name: "Leia Organa", URL: "https://swapi.dev/api/people/5/"},
	{Name: "Owen Lars", URL: "https://swapi.dev/api/people/6/"},
	{Name: "Beru Whitesun lars", URL: "https://swapi.dev/api/people/7/"},
	{Name: "R5-D4", URL: "https://swapi.dev/api/people/8/"},
	{Name: "Biggs Darklighter", URL: "https://swapi.dev/api/people/9/"},
	{Name: "Obi-Wan Kenobi", URL: "https://swapi.dev/api/people/10/"},
	{Name: "Anakin Skywalker", URL: "https://swapi.dev/api/people/11/"},
	{Name: "Chewbacca", URL: "https://swapi.dev/api/people/13/"},
	{Name: "Han Solo", URL: "https://swapi.dev/api/people/14/"},
	{Name: "Jabba Desilijic Tiure", URL: "https://swapi.dev/api/people/16/"},
	{Name: "Wedge Antilles", URL: "https://swapi.dev/api/people/18/"},
	{Name: "Yoda", URL: "https://swapi.dev/api/people/20/"},
	{Name: "Palpatine", URL: "https://swapi.dev/api/people/21/"},
	{Name: "Boba Fett", URL: "https://swapi.dev/api/people/22/"},
	{Name: "Lando Calrissian", URL: "https://swapi.dev/api/people/25/"},
	{Name: "Padmé Amidala", URL: "https://swapi.dev/api/people/35/"},
}

var planets = []starwars.Record{
	{Name: "Tatooine", URL: "https://swapi.dev/api/planets/1/"},
	{Name: "Alderaan", URL: "https://swapi.dev/api/planets/2/"},
	{Name: "Yavin IV", URL: "https://swapi.dev/api/planets/3/"},
	{Name: "Hoth", URL: "https://swapi.dev/api/planets/4/"},
	{Name: "Dagobah", URL: "https://swapi.dev/api/planets/5/"},
	{Name: "Bespin", URL: "https://swapi.dev/api/planets/6/"},
	{Name: "Endor", URL: "https://swapi.dev/api/planets/7/"},
	{Name: "Naboo", URL: "https://swapi.dev/api/planets/8/"},
	{Name: "Coruscant", URL: "https://swapi.dev/api/planets/9/"},
	{Name: "Kamino", URL: "https://swapi.dev/api/planets/10/"},
}
